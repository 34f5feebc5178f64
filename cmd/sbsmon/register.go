// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/GermanBionicSystems/sbsmon/sbs"
	"github.com/spf13/cobra"
)

var wordCmd = &cobra.Command{
	Use:   "word REG",
	Short: "Read a 16 bit register",
	Long: `Read a word register by name (e.g. Voltage) or number (e.g. 0x09) and print
its raw value.`,
	Args: cobra.ExactArgs(1),
	RunE: runWord,
}

var blockCmd = &cobra.Command{
	Use:   "block REG",
	Short: "Read a block register",
	Long: `Read a length prefixed block register by name (e.g. DeviceName) or number
(e.g. 0x21) and print its payload.`,
	Args: cobra.ExactArgs(1),
	RunE: runBlock,
}

func init() {
	rootCmd.AddCommand(wordCmd)
	rootCmd.AddCommand(blockCmd)
}

func runWord(cmd *cobra.Command, args []string) error {
	reg, err := sbs.ParseRegister(args[0])
	if err != nil {
		return err
	}
	b, err := openBus()
	if err != nil {
		return err
	}
	defer b.Close()
	batt, err := openBattery(b)
	if err != nil {
		return err
	}
	v, err := batt.ReadWord(reg)
	if err != nil {
		return err
	}
	fmt.Printf("%s: 0x%04X (%d)\n", reg, v, v)
	return nil
}

func runBlock(cmd *cobra.Command, args []string) error {
	reg, err := sbs.ParseRegister(args[0])
	if err != nil {
		return err
	}
	if !reg.IsBlock() {
		log.Printf("%s is not a block register", reg)
	}
	b, err := openBus()
	if err != nil {
		return err
	}
	defer b.Close()
	batt, err := openBattery(b)
	if err != nil {
		return err
	}
	var buf [sbs.BlockBufLen]byte
	n, err := batt.ReadBlock(reg, buf[:])
	if errors.Is(err, sbs.ErrBlockOverflow) {
		log.Print(err)
	} else if err != nil {
		return err
	}
	fmt.Printf("%s: %q [% X]\n", reg, buf[:n], buf[:n])
	return nil
}
