package a

import stdtime "time"

func aliasedLocal() stdtime.Time {
	return stdtime.Now() // want "time.Now\\(\\) should be followed by .UTC\\(\\) for timezone consistency"
}

func aliasedUTC() stdtime.Time {
	return stdtime.Now().UTC()
}
