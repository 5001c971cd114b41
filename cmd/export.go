/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eslsoft/plwordnet/internal/usecase/export"
)

const (
	exportOutputKey = "export.output"
	exportBatchKey  = "export.batch_size"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the loaded dump into a SQLite database",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		outputPath := viper.GetString(exportOutputKey)
		batchSize := viper.GetInt(exportBatchKey)

		if outputPath == "" {
			return fmt.Errorf("--output is required")
		}

		lex, logger, err := loadLexicon()
		if err != nil {
			return err
		}

		service, err := export.NewService(outputPath, export.WithBatchSize(batchSize))
		if err != nil {
			return fmt.Errorf("create export service: %w", err)
		}

		if err := service.Export(ctx, lex); err != nil {
			return fmt.Errorf("export dump: %w", err)
		}

		logger.WithField("output", outputPath).Info("export finished")
		cmd.Printf("exported to %s\n", outputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "", "target SQLite database file")
	exportCmd.Flags().Int("batch-size", 0, "rows per insert batch (default 512)")

	bindFlagToViper(exportOutputKey, exportCmd.Flags().Lookup("output"))
	bindFlagToViper(exportBatchKey, exportCmd.Flags().Lookup("batch-size"))
}
