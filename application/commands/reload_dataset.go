package commands

import (
	"careergraph/pkg/utils"
)

// ReloadDatasetCommand re-reads the dataset file and swaps the Record Store
// snapshot. A failed reload keeps the previous snapshot.
type ReloadDatasetCommand struct {
	Reason string `json:"reason" validate:"max=256"`
}

// Validate validates the command
func (c ReloadDatasetCommand) Validate() error {
	return utils.ValidateStruct(c)
}
