package index

import (
	"errors"

	"github.com/Aman-CERP/seroost/internal/config"
	serrors "github.com/Aman-CERP/seroost/internal/errors"
	"github.com/Aman-CERP/seroost/internal/store"
	"github.com/Aman-CERP/seroost/internal/ui"
)

// Status describes the index file in paths. A missing index is reported
// with Exists false, not as an error. indexPath is the configured document
// directory and may be empty.
func Status(paths config.Paths, indexPath string) (ui.StatusInfo, error) {
	info := ui.StatusInfo{
		IndexFile: paths.IndexFile,
		IndexPath: indexPath,
		Locked:    store.IsLocked(paths.LockFile),
	}

	fi, err := store.Stat(paths.IndexFile)
	if err != nil {
		if errors.Is(err, serrors.ErrIndexNotFound) {
			return info, nil
		}
		return info, err
	}

	idx, err := store.Load(paths.IndexFile)
	if err != nil {
		return info, err
	}

	info.Exists = true
	info.Size = fi.Size
	info.ModTime = fi.ModTime
	info.Documents = idx.Documents()
	info.Terms = idx.DistinctTerms()
	return info, nil
}
