/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/Paintersrp/nt/internal/exitcode"
	"github.com/Paintersrp/nt/internal/state"
	"github.com/Paintersrp/nt/pkg/cmd/root"
)

func Execute() {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes one nt invocation and returns its exit status.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	s := state.NewState()
	s.Stdout = stdout
	s.Stderr = stderr

	rootCmd := root.NewCmdRoot(s)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(stderr, "Error: ")
		color.New(color.FgRed).Fprintln(stderr, err)
		return exitcode.From(err)
	}
	return exitcode.OK
}
