package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// rentTime runs the payment flow for an account with no remaining time.
// It returns the rented minutes; ok is false when the user cancels or the
// purchase fails.
func (a *App) rentTime(ctx context.Context, username string) (float64, bool) {
	fmt.Fprintf(a.out, "No time left on your account. Rate: %.2f per minute.\n", a.config.PricePerMinute)

	for {
		raw, err := getSimpleText(a.reader, "Minutes to rent (blank to cancel):", a.out)
		if err != nil || raw == "" {
			return 0, false
		}

		minutes, err := strconv.ParseFloat(raw, 64)
		if err != nil || minutes <= 0 {
			fmt.Fprintln(a.out, "Enter a positive number of minutes.")
			continue
		}

		price := minutes * a.config.PricePerMinute
		confirm, err := getSimpleText(a.reader,
			fmt.Sprintf("That is %.2f for %.1f minutes. Confirm? (y/n)", price, minutes), a.out)
		if err != nil {
			return 0, false
		}
		if !strings.EqualFold(confirm, "y") {
			continue
		}

		if err := a.client.AddTime(ctx, username, minutes); err != nil {
			fmt.Fprintln(a.out, "Purchase failed:", err)
			return 0, false
		}

		fmt.Fprintf(a.out, "Added %.1f minutes. Enjoy!\n", minutes)
		return minutes, true
	}
}
