// Command horario evaluates a station schedule text, e.g.
//
//	horario -at 2025-11-17T15:00 "L:08:00-14:00;L:16:00-20:00"
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/Roma7-7-7/fuel-stations/internal/schedule"
	"github.com/Roma7-7-7/fuel-stations/pkg/clock"
)

func main() {
	at := flag.String("at", "", "Evaluate at this local time (2006-01-02T15:04) instead of now")
	zone := flag.String("tz", "Europe/Madrid", "Time zone of the station")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: horario [options] <schedule text>")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		os.Exit(2) //nolint:mnd // usage error
	}

	c, err := clock.NewInZone(*zone)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	now := c.Now()
	if *at != "" {
		now, err = time.ParseInLocation("2006-01-02T15:04", *at, c.Location())
		if err != nil {
			fmt.Fprintf(os.Stderr, "parse -at: %v\n", err)
			os.Exit(1)
		}
	}

	text := strings.Join(flag.Args(), " ")
	parsed := schedule.Parse(text)
	for _, b := range parsed.Blocks {
		fmt.Println(b)
	}
	fmt.Printf("%s %s: %s\n", now.Weekday(), now.Format("15:04"), schedule.IsOpenNow(text, now))
}
