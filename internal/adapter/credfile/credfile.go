// Package credfile loads biker credentials from the Ecodelivery CSV
// export (columns: Biker, User, Password).
package credfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/beetracked/fleet-ops/internal/domain/models"
)

type Source struct {
	path string
}

func New(path string) *Source {
	return &Source{path: path}
}

// Load reads the credential rows. A missing file means no Ecodelivery
// users, not an error. The header row and short rows are skipped.
func (s *Source) Load(_ context.Context) ([]models.Credential, error) {
	const op = "credfile.Load"

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var creds []models.Credential
	for i, row := range rows {
		if i == 0 || len(row) < 3 {
			continue
		}
		creds = append(creds, models.Credential{
			Biker:    strings.TrimSpace(row[0]),
			User:     strings.TrimSpace(row[1]),
			Password: strings.TrimSpace(row[2]),
		})
	}
	return creds, nil
}
