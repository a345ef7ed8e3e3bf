package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	domainerrors "marketplace/internal/domain/errors"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "marketplace",
		Short:         "Marketplace orchestration core tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCommand(), newCheckCommand())

	if err := root.ExecuteContext(context.Background()); err != nil {
		writeJSON(os.Stderr, domainerrors.ErrorResponse{
			Error: domainerrors.Describe(err),
			Meta:  &domainerrors.MetaInfo{},
		})
		os.Exit(1)
	}
}

func writeJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
