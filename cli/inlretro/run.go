package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"
)

// runROM launches cmdline with the dump appended to its arguments.
func runROM(ctx context.Context, cmdline, rompath string) error {
	args, err := shellquote.Split(cmdline)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	if len(args) == 0 {
		return fmt.Errorf("run: empty command")
	}
	args = append(args, rompath)

	log.Printf("inlretro: run %q\n", args)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err = cmd.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
