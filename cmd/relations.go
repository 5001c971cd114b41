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

	"github.com/eslsoft/plwordnet/internal/usecase"
)

const (
	relationsTypeKey = "relations.type"
	relationsKindKey = "relations.kind"
)

var relationsCmd = &cobra.Command{
	Use:   "relations",
	Short: "List relation edges of a given relation type",
	RunE: func(cmd *cobra.Command, args []string) error {
		relationTypeID := viper.GetUint64(relationsTypeKey)
		kind := viper.GetString(relationsKindKey)

		if relationTypeID == 0 {
			return fmt.Errorf("--type is required")
		}

		lex, _, err := loadLexicon()
		if err != nil {
			return err
		}
		uc := usecase.NewLexiconUsecase(lex)

		count := 0
		switch kind {
		case "synset":
			for rel := range uc.SynsetRelationsByType(relationTypeID) {
				cmd.Printf("%d -> %d (relation=%d valid=%t owner=%s)\n",
					rel.Parent, rel.Child, rel.Relation, rel.Valid, rel.Owner)
				count++
			}
		case "lexical":
			for rel := range uc.LexicalRelationsByType(relationTypeID) {
				cmd.Printf("%d -> %d (relation=%d valid=%t owner=%s)\n",
					rel.Parent, rel.Child, rel.Relation, rel.Valid, rel.Owner)
				count++
			}
		default:
			return fmt.Errorf("unknown relation kind %q (expected synset or lexical)", kind)
		}

		cmd.Printf("%d edge(s)\n", count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(relationsCmd)

	relationsCmd.Flags().Uint64("type", 0, "relation type id")
	relationsCmd.Flags().String("kind", "synset", "edge list to search: synset or lexical")

	bindFlagToViper(relationsTypeKey, relationsCmd.Flags().Lookup("type"))
	bindFlagToViper(relationsKindKey, relationsCmd.Flags().Lookup("kind"))
}
