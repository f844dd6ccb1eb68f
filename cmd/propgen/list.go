package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/muesli/termenv"

	"github.com/Faultbox/propforge/internal/assets"
)

func cmdList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	params := fs.Bool("params", false, "Show parameter tables")
	if _, _, err := setup(fs, args); err != nil {
		return err
	}

	out := termenv.NewOutput(os.Stdout)
	reg := assets.Builtin()
	for _, name := range reg.Names() {
		k, err := reg.Kind(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%s  %s  (%d params)\n",
			out.String(fmt.Sprintf("%-10s", k.Name)).Bold().Foreground(out.Color("6")),
			k.DisplayName(), len(k.Params))
		if !*params {
			continue
		}
		for _, p := range k.Params {
			fmt.Fprintf(os.Stdout, "    %-22s %-32s %s\n",
				p.Key, p.Label(), out.String(paramRange(p)).Faint())
		}
	}
	return nil
}

func paramRange(p assets.Param) string {
	f := func(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }
	if p.Unit == assets.Flag {
		return fmt.Sprintf("default %t, chance %s", p.Default > 0.5, f(p.Chance))
	}
	return fmt.Sprintf("default %s in [%s, %s]", f(p.Default), f(p.Min), f(p.Max))
}
