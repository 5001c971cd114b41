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
	"github.com/spf13/cobra"

	"github.com/eslsoft/plwordnet/internal/usecase"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print dump metadata and collection counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		lex, _, err := loadLexicon()
		if err != nil {
			return err
		}

		meta := usecase.NewLexiconUsecase(lex).Metadata()
		cmd.Printf("owner:             %s\n", meta.Owner)
		cmd.Printf("date:              %s\n", meta.Date)
		cmd.Printf("version:           %s\n", meta.Version)
		cmd.Printf("lexical units:     %d\n", meta.LexicalUnits)
		cmd.Printf("synsets:           %d\n", meta.Synsets)
		cmd.Printf("relation types:    %d\n", meta.RelationTypes)
		cmd.Printf("lexical relations: %d\n", meta.LexicalRelations)
		cmd.Printf("synset relations:  %d\n", meta.SynsetRelations)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
