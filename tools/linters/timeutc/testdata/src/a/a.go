package a

import "time"

type item struct {
	createdAt time.Time
}

func insertLocal() item {
	return item{createdAt: time.Now()} // want "time.Now\\(\\) should be followed by .UTC\\(\\) for timezone consistency"
}

func insertUTC() item {
	return item{createdAt: time.Now().UTC()}
}

func completeLocal(it *item) {
	completedAt := time.Now() // want "time.Now\\(\\) should be followed by .UTC\\(\\) for timezone consistency"
	_ = completedAt
}

func formatUTC() string {
	return time.Now().UTC().Format("2006-01-02 15:04:05")
}

func truncatedLocal() time.Time {
	return time.Now().Truncate(time.Second) // want "time.Now\\(\\) should be followed by .UTC\\(\\) for timezone consistency"
}

func nolintGeneral() {
	//nolint
	_ = time.Now()
}

func nolintSpecific() time.Duration {
	start := time.Now() //nolint:timeutc // monotonic reading for latency
	return time.Since(start)
}

func nolintList() {
	_ = time.Now() //nolint:errcheck,timeutc
}

func nolintOtherLinter() {
	_ = time.Now() //nolint:otherlinter // want "time.Now\\(\\) should be followed by .UTC\\(\\) for timezone consistency"
}

type service struct {
	now func() time.Time
}

func clockLocal() *service {
	return &service{now: time.Now} // want "time.Now used as a value returns local time; wrap it in a func that calls .UTC\\(\\)"
}

func clockUTC() *service {
	return &service{now: func() time.Time { return time.Now().UTC() }}
}
