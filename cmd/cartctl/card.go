package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dwikikusuma/storefront/internal/checkout/validation"
	"github.com/dwikikusuma/storefront/internal/normalize"
)

var errCardRejected = errors.New("card number rejected")

func newCardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "card <number>",
		Short: "Detect the brand of a card number and run the Luhn check",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number := strings.Join(args, "")
			brand := validation.CardBrand(number)
			luhn := validation.Luhn(number)
			length := brand.Accepts(number)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "number: %s\n", validation.FormatCardNumber(number))
			fmt.Fprintf(out, "brand:  %s\n", brand)
			fmt.Fprintf(out, "length: %s\n", verdict(length))
			fmt.Fprintf(out, "luhn:   %s\n", verdict(luhn))
			if !luhn || !length {
				return errCardRejected
			}
			return nil
		},
	}
}

func newPriceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "price <text>...",
		Short: "Parse price labels the way the storefront does",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, a := range args {
				n := normalize.ParsePrice(a)
				fmt.Fprintf(cmd.OutOrStdout(), "%q\t%d\t%s\n", a, n, normalize.FormatCurrency(n))
			}
			return nil
		},
	}
}

func verdict(ok bool) string {
	if ok {
		return "ok"
	}
	return "fail"
}
