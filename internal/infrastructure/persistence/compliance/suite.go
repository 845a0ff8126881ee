// Package compliance holds the behaviour every todo.Repository implementation must share.
package compliance

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rezkam/todo/internal/application/todo"
	"github.com/rezkam/todo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// baseTime has whole-second precision so every backend stores it exactly.
var baseTime = time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

// RunRepositoryComplianceTest runs a standard set of tests against a Repository implementation.
// setup returns a fresh (empty) repository and a cleanup function.
func RunRepositoryComplianceTest(t *testing.T, setup func(t *testing.T) (todo.Repository, func())) {
	t.Run("CreateAndFind", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		item := newItem(t, "Buy milk", "two liters", domain.StatusIncomplete, baseTime)
		created, err := repo.CreateItem(ctx, &item)
		require.NoError(t, err)
		assertSameItem(t, item, *created)

		fetched, err := repo.FindItemByID(ctx, item.ID)
		require.NoError(t, err)
		assertSameItem(t, item, *fetched)
		assert.Nil(t, fetched.CompletedAt)
		assert.Equal(t, time.UTC, fetched.CreatedAt.Location())
	})

	t.Run("FindMissingItem", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		_, err := repo.FindItemByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = repo.FindItemByID(ctx, "non-existent-id")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		err = repo.DeleteItem(ctx, "42")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("UpdateItem", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		item := newItem(t, "draft", "", domain.StatusIncomplete, baseTime)
		_, err := repo.CreateItem(ctx, &item)
		require.NoError(t, err)

		completedAt := baseTime.Add(time.Hour)
		changed := item
		changed.Title = "final"
		changed.Body = "with body"
		changed.Status = domain.StatusComplete
		changed.CompletedAt = &completedAt
		changed.CreatedAt = baseTime.Add(24 * time.Hour)

		updated, err := repo.UpdateItem(ctx, &changed)
		require.NoError(t, err)
		assert.Equal(t, "final", updated.Title)
		assert.True(t, updated.CreatedAt.Equal(baseTime), "createdAt is never rewritten")

		fetched, err := repo.FindItemByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, "final", fetched.Title)
		assert.Equal(t, "with body", fetched.Body)
		assert.Equal(t, domain.StatusComplete, fetched.Status)
		require.NotNil(t, fetched.CompletedAt)
		assert.True(t, fetched.CompletedAt.Equal(completedAt))
		assert.True(t, fetched.CreatedAt.Equal(baseTime))

		reopened := *fetched
		reopened.Status = domain.StatusIncomplete
		reopened.CompletedAt = nil
		_, err = repo.UpdateItem(ctx, &reopened)
		require.NoError(t, err)

		fetched, err = repo.FindItemByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Nil(t, fetched.CompletedAt)
	})

	t.Run("UpdateMissingItem", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()

		item := newItem(t, "ghost", "", domain.StatusIncomplete, baseTime)
		_, err := repo.UpdateItem(context.Background(), &item)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("DeleteItem", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		item := newItem(t, "to delete", "", domain.StatusIncomplete, baseTime)
		_, err := repo.CreateItem(ctx, &item)
		require.NoError(t, err)

		require.NoError(t, repo.DeleteItem(ctx, item.ID))

		_, err = repo.FindItemByID(ctx, item.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		err = repo.DeleteItem(ctx, item.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("DeleteItemsByFilter", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		seed(t, repo, 3, domain.StatusIncomplete)
		seed(t, repo, 2, domain.StatusComplete)

		removed, err := repo.DeleteItems(ctx, domain.IncompleteFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(3), removed)

		remaining := findAll(t, repo, domain.AllFilter())
		require.Len(t, remaining, 2)
		for _, item := range remaining {
			assert.Equal(t, domain.StatusComplete, item.Status)
		}

		removed, err = repo.DeleteItems(ctx, domain.AllFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(2), removed)

		removed, err = repo.DeleteItems(ctx, domain.AllFilter())
		require.NoError(t, err)
		assert.Zero(t, removed)
	})

	t.Run("FindItemsEmpty", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()

		slice, err := repo.FindItems(context.Background(), domain.AllFilter(), pageRequest(0, 10))
		require.NoError(t, err)
		assert.Zero(t, slice.TotalCount)
		assert.NotNil(t, slice.Items)
		assert.Empty(t, slice.Items)
	})

	t.Run("FindItemsPaging", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		seeded := seed(t, repo, 25, domain.StatusIncomplete)

		tests := []struct {
			page    int
			wantIDs []string
		}{
			{page: 0, wantIDs: ids(seeded[0:10])},
			{page: 1, wantIDs: ids(seeded[10:20])},
			{page: 2, wantIDs: ids(seeded[20:25])},
			{page: 3, wantIDs: []string{}},
		}
		for _, tt := range tests {
			t.Run(fmt.Sprintf("page %d", tt.page), func(t *testing.T) {
				slice, err := repo.FindItems(ctx, domain.AllFilter(), pageRequest(tt.page, 10))
				require.NoError(t, err)
				assert.Equal(t, 25, slice.TotalCount)
				assert.Equal(t, 3, slice.TotalPages(10))
				assert.Equal(t, tt.wantIDs, ids(slice.Items))
			})
		}
	})

	t.Run("FindItemsDescending", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()

		seeded := seed(t, repo, 5, domain.StatusIncomplete)
		slices.Reverse(seeded)

		req := pageRequest(0, 10)
		req.Direction = domain.SortDescending
		slice, err := repo.FindItems(context.Background(), domain.AllFilter(), req)
		require.NoError(t, err)
		assert.Equal(t, ids(seeded), ids(slice.Items))
	})

	t.Run("FindItemsTieBreaksOnID", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		var want []string
		for i := range 6 {
			item := newItem(t, fmt.Sprintf("same time %d", i), "", domain.StatusIncomplete, baseTime)
			_, err := repo.CreateItem(ctx, &item)
			require.NoError(t, err)
			want = append(want, item.ID)
		}
		slices.Sort(want)

		var got []string
		for page := range 3 {
			slice, err := repo.FindItems(ctx, domain.AllFilter(), pageRequest(page, 2))
			require.NoError(t, err)
			got = append(got, ids(slice.Items)...)
		}
		assert.Equal(t, want, got, "pages must neither repeat nor skip rows")
	})

	t.Run("FindItemsSortByColumns", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		for i, title := range []string{"banana", "apple", "cherry", "apple"} {
			item := newItem(t, title, fmt.Sprintf("body %d", i), domain.StatusIncomplete, baseTime.Add(time.Duration(i)*time.Minute))
			_, err := repo.CreateItem(ctx, &item)
			require.NoError(t, err)
		}

		req := pageRequest(0, 10)
		req.Sort = []domain.SortColumn{domain.SortColumnTitle, domain.SortColumnBody}
		req.Direction = domain.SortDescending
		slice, err := repo.FindItems(ctx, domain.AllFilter(), req)
		require.NoError(t, err)

		var got []string
		for _, item := range slice.Items {
			got = append(got, item.Title+"/"+item.Body)
		}
		assert.Equal(t, []string{"cherry/body 2", "banana/body 0", "apple/body 3", "apple/body 1"}, got)
	})

	t.Run("FindItemsSortByCompletedAt", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		openFirst := newItem(t, "open first", "", domain.StatusIncomplete, baseTime)
		doneLate := newItem(t, "done late", "", domain.StatusComplete, baseTime.Add(2*time.Minute))
		doneEarly := newItem(t, "done early", "", domain.StatusComplete, baseTime.Add(time.Minute))
		openLast := newItem(t, "open last", "", domain.StatusIncomplete, baseTime.Add(3*time.Minute))
		for _, item := range []domain.TodoItem{openFirst, doneLate, doneEarly, openLast} {
			_, err := repo.CreateItem(ctx, &item)
			require.NoError(t, err)
		}

		req := pageRequest(0, 10)
		req.Sort = []domain.SortColumn{domain.SortColumnCompletedAt}

		slice, err := repo.FindItems(ctx, domain.AllFilter(), req)
		require.NoError(t, err)
		got := ids(slice.Items)
		require.Len(t, got, 4)
		assert.Equal(t, []string{doneEarly.ID, doneLate.ID}, got[:2], "ascending lists completed items first")
		assert.ElementsMatch(t, []string{openFirst.ID, openLast.ID}, got[2:])

		req.Direction = domain.SortDescending
		slice, err = repo.FindItems(ctx, domain.AllFilter(), req)
		require.NoError(t, err)
		got = ids(slice.Items)
		require.Len(t, got, 4)
		assert.ElementsMatch(t, []string{openFirst.ID, openLast.ID}, got[:2], "descending lists open items first")
		assert.Equal(t, []string{doneLate.ID, doneEarly.ID}, got[2:])
	})

	t.Run("FindItemsStatusFilter", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		seed(t, repo, 4, domain.StatusIncomplete)
		seed(t, repo, 3, domain.StatusComplete)

		incomplete, err := repo.FindItems(ctx, domain.IncompleteFilter(), pageRequest(0, 2))
		require.NoError(t, err)
		assert.Equal(t, 4, incomplete.TotalCount)
		assert.Len(t, incomplete.Items, 2)

		complete, err := repo.FindItems(ctx, domain.CompleteFilter(), pageRequest(0, 10))
		require.NoError(t, err)
		assert.Equal(t, 3, complete.TotalCount)
		for _, item := range complete.Items {
			assert.Equal(t, domain.StatusComplete, item.Status)
		}
	})

	t.Run("FindItemsSearch", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		for i, fields := range [][2]string{
			{"groceries", "milk and eggs"},
			{"Milk run", ""},
			{"chores", "vacuum"},
		} {
			item := newItem(t, fields[0], fields[1], domain.StatusIncomplete, baseTime.Add(time.Duration(i)*time.Minute))
			_, err := repo.CreateItem(ctx, &item)
			require.NoError(t, err)
		}

		tests := []struct {
			term      string
			wantCount int
		}{
			{term: "milk", wantCount: 2},
			{term: "vacuum", wantCount: 1},
			{term: "chores", wantCount: 1},
			{term: "nothing", wantCount: 0},
			{term: "", wantCount: 3},
		}
		for _, tt := range tests {
			t.Run(tt.term, func(t *testing.T) {
				slice, err := repo.FindItems(ctx, domain.SearchFilter(tt.term), pageRequest(0, 10))
				require.NoError(t, err)
				assert.Equal(t, tt.wantCount, slice.TotalCount)
				assert.Len(t, slice.Items, tt.wantCount)
			})
		}
	})

	t.Run("AtomicCommit", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		item := newItem(t, "committed", "", domain.StatusIncomplete, baseTime)
		err := repo.Atomic(ctx, func(tx todo.Repository) error {
			if _, err := tx.CreateItem(ctx, &item); err != nil {
				return err
			}
			found, err := tx.FindItemByID(ctx, item.ID)
			if err != nil {
				return err
			}
			found.Status = domain.StatusComplete
			completedAt := baseTime.Add(time.Minute)
			found.CompletedAt = &completedAt
			_, err = tx.UpdateItem(ctx, found)
			return err
		})
		require.NoError(t, err)

		fetched, err := repo.FindItemByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusComplete, fetched.Status)
	})

	t.Run("AtomicRollback", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		kept := newItem(t, "kept", "", domain.StatusIncomplete, baseTime)
		_, err := repo.CreateItem(ctx, &kept)
		require.NoError(t, err)

		errAbort := errors.New("abort")
		lost := newItem(t, "lost", "", domain.StatusIncomplete, baseTime)
		err = repo.Atomic(ctx, func(tx todo.Repository) error {
			if _, err := tx.CreateItem(ctx, &lost); err != nil {
				return err
			}
			if err := tx.DeleteItem(ctx, kept.ID); err != nil {
				return err
			}
			return errAbort
		})
		require.ErrorIs(t, err, errAbort)

		_, err = repo.FindItemByID(ctx, lost.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = repo.FindItemByID(ctx, kept.ID)
		assert.NoError(t, err)
	})

	t.Run("AtomicPanicRollsBack", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		item := newItem(t, "panicked", "", domain.StatusIncomplete, baseTime)
		assert.Panics(t, func() {
			_ = repo.Atomic(ctx, func(tx todo.Repository) error {
				if _, err := tx.CreateItem(ctx, &item); err != nil {
					return err
				}
				panic("boom")
			})
		})

		_, err := repo.FindItemByID(ctx, item.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("FindItemsInsideAtomic", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		seed(t, repo, 3, domain.StatusIncomplete)
		err := repo.Atomic(ctx, func(tx todo.Repository) error {
			slice, err := tx.FindItems(ctx, domain.AllFilter(), pageRequest(0, 10))
			if err != nil {
				return err
			}
			assert.Equal(t, 3, slice.TotalCount)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("ConcurrentStatusUpdates", func(t *testing.T) {
		repo, teardown := setup(t)
		defer teardown()
		ctx := context.Background()

		svc := todo.NewService(repo, todo.Config{})
		item, err := svc.Insert(ctx, "contended", "")
		require.NoError(t, err)

		const writers = 10
		var wg sync.WaitGroup
		errs := make(chan error, writers)
		for i := range writers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.Update(ctx, domain.UpdateParams{
					ID:     item.ID,
					Title:  fmt.Sprintf("writer %d", i),
					Status: i % 2,
				})
				if err != nil {
					errs <- err
				}
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			assert.NoError(t, err)
		}

		final, err := repo.FindItemByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Contains(t, final.Title, "writer ")
		assert.Equal(t, final.Status == domain.StatusComplete, final.CompletedAt != nil,
			"completedAt must be set exactly when the item is complete")
	})
}

func newItem(t *testing.T, title, body string, status domain.Status, createdAt time.Time) domain.TodoItem {
	t.Helper()
	id, err := uuid.NewV7()
	require.NoError(t, err)

	item := domain.TodoItem{
		ID:        id.String(),
		Title:     title,
		Body:      body,
		Status:    status,
		CreatedAt: createdAt,
	}
	if status == domain.StatusComplete {
		completedAt := createdAt.Add(time.Minute)
		item.CompletedAt = &completedAt
	}
	return item
}

// seed inserts n items with strictly increasing createdAt values, continuing
// after anything already stored.
func seed(t *testing.T, repo todo.Repository, n int, status domain.Status) []domain.TodoItem {
	t.Helper()
	ctx := context.Background()

	existing, err := repo.FindItems(ctx, domain.AllFilter(), pageRequest(0, 1))
	require.NoError(t, err)
	offset := existing.TotalCount

	items := make([]domain.TodoItem, 0, n)
	for i := range n {
		item := newItem(t, fmt.Sprintf("item %03d", offset+i), "", status, baseTime.Add(time.Duration(offset+i)*time.Minute))
		_, err := repo.CreateItem(ctx, &item)
		require.NoError(t, err)
		items = append(items, item)
	}
	return items
}

func findAll(t *testing.T, repo todo.Repository, filter domain.Filter) []domain.TodoItem {
	t.Helper()
	slice, err := repo.FindItems(context.Background(), filter, pageRequest(0, 1000))
	require.NoError(t, err)
	return slice.Items
}

func pageRequest(page, size int) domain.PageRequest {
	return domain.PageRequest{
		Page:      page,
		Size:      size,
		Sort:      []domain.SortColumn{domain.SortColumnCreatedAt},
		Direction: domain.SortAscending,
	}
}

func ids(items []domain.TodoItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func assertSameItem(t *testing.T, want, got domain.TodoItem) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.Body, got.Body)
	assert.Equal(t, want.Status, got.Status)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "createdAt: want %s, got %s", want.CreatedAt, got.CreatedAt)
	if want.CompletedAt == nil {
		assert.Nil(t, got.CompletedAt)
		return
	}
	require.NotNil(t, got.CompletedAt)
	assert.True(t, want.CompletedAt.Equal(*got.CompletedAt))
}
