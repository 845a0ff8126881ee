package a

type clock struct{}

func (clock) Now() int { return 0 }

func notTheTimePackage() int {
	var time clock
	return time.Now()
}
