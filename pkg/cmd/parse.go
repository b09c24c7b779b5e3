// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/consensys/go-sassas/pkg/sassas/diag"
	"github.com/consensys/go-sassas/pkg/sassas/parser"
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse [flags] isa_file",
	Short: "Parse an instruction-set description file.",
	Long: `Parse a given instruction-set description file, reporting any problems
	found.  On a fully successful parse, a summary of the parsed description
	can be printed.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure logging
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		file := readSourceFile(args[0])
		//
		log.Debugf("parsing %s (%d bytes)", file.Origin(), len(file.Contents()))
		//
		isaParser := parser.NewISAParser(file.Origin(), file.Contents())
		result := isaParser.Parse()
		// Report all diagnostics, even on a successful parse (there may be
		// warnings).
		renderer := diag.NewRenderer(os.Stdout, diag.DefaultStyles)
		for _, d := range isaParser.TakeDiagnostics() {
			renderer.Render(file, d)
		}
		//
		if result.IsEmpty() {
			os.Exit(1)
		}
		//
		model := result.Unwrap()
		//
		if GetFlag(cmd, "raw") {
			// Raw dump of the parsed data structures, useful when debugging
			// the parser itself.
			spew.Dump(model)
		} else if GetFlag(cmd, "summary") {
			model.Dump(os.Stdout)
		}
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().Bool("summary", true, "print a summary of the parsed description")
	parseCmd.Flags().Bool("raw", false, "print the raw parsed data structures")
}
