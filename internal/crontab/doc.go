// Package crontab parses five-field cron expressions and answers ceiling
// queries: the earliest minute at or after a given instant that the
// expression matches.
//
//	┌───────────── minute (0-59)
//	│ ┌───────────── hour (0-23)
//	│ │ ┌───────────── day of month (1-31)
//	│ │ │ ┌───────────── month (1-12 or JAN-DEC)
//	│ │ │ │ ┌───────────── day of week (0-7 or SUN-SAT, 0 and 7 are Sunday)
//	│ │ │ │ │
//	* * * * *
//
// Each field accepts single values, ranges (1-5), lists (1,3,5), steps
// (*/15, 1-30/5, 10/5) and the wildcard. The Jenkins hash token is also
// understood: H, H(0-29), H/15 and H(0-29)/10 pick a value derived from a
// seed string so that jobs sharing the same expression spread out.
//
// When both day-of-month and day-of-week are restricted the day matches if
// either of them matches, as in classic cron. "0 0 1 * 1" fires on the first
// of every month and on every Monday.
//
// Searches run in the location of the instant passed in.
package crontab
