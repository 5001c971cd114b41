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
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eslsoft/plwordnet/internal/usecase"
)

const (
	lookupUnitKey         = "lookup.unit"
	lookupSynsetKey       = "lookup.synset"
	lookupRelationTypeKey = "lookup.relation_type"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Look up a single entity by id and print its resolved view",
	RunE: func(cmd *cobra.Command, args []string) error {
		unitID := viper.GetUint64(lookupUnitKey)
		synsetID := viper.GetUint64(lookupSynsetKey)
		relationTypeID := viper.GetUint64(lookupRelationTypeKey)

		lex, _, err := loadLexicon()
		if err != nil {
			return err
		}
		uc := usecase.NewLexiconUsecase(lex)

		var view any
		switch {
		case unitID != 0:
			view, err = uc.GetLexicalUnit(unitID)
		case synsetID != 0:
			view, err = uc.GetSynset(synsetID)
		case relationTypeID != 0:
			view, err = uc.GetRelationType(relationTypeID)
		default:
			return errors.New("one of --unit, --synset or --relation-type is required")
		}
		if err != nil {
			return fmt.Errorf("lookup: %w", err)
		}

		encoded, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return fmt.Errorf("encode view: %w", err)
		}
		cmd.Println(string(encoded))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.Flags().Uint64("unit", 0, "lexical unit id")
	lookupCmd.Flags().Uint64("synset", 0, "synset id")
	lookupCmd.Flags().Uint64("relation-type", 0, "relation type id")

	bindFlagToViper(lookupUnitKey, lookupCmd.Flags().Lookup("unit"))
	bindFlagToViper(lookupSynsetKey, lookupCmd.Flags().Lookup("synset"))
	bindFlagToViper(lookupRelationTypeKey, lookupCmd.Flags().Lookup("relation-type"))
}
