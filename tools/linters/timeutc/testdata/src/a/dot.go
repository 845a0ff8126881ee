package a

import . "time"

func dotLocal() Time {
	return Now() // want "time.Now\\(\\) should be followed by .UTC\\(\\) for timezone consistency"
}

func dotUTC() Time {
	return Now().UTC()
}
