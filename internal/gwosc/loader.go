package gwosc

import (
	"fmt"
	"os"

	"gonum.org/v1/hdf5"

	"github.com/san-kum/gwflux/internal/strain"
)

const (
	// DatasetPath is the strain dataset inside a GWOSC HDF5 file.
	DatasetPath = "strain/Strain"

	attrSpacing = "Xspacing"
	attrStart   = "Xstart"
	attrNpoints = "Npoints"
)

// FormatError reports a file that opened as HDF5 but does not follow the
// GWOSC strain layout.
type FormatError struct {
	Path    string
	Element string
	Wrapped error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("gwosc: %s: missing or invalid %s", e.Path, e.Element)
}

func (e *FormatError) Unwrap() error { return e.Wrapped }

// Load reads a GWOSC strain file into a strain.Series.
func Load(path string) (*strain.Series, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("gwosc: open %s: %w", path, err)
	}

	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, &FormatError{Path: path, Element: "HDF5 container", Wrapped: err}
	}
	defer f.Close()

	dset, err := f.OpenDataset(DatasetPath)
	if err != nil {
		return nil, &FormatError{Path: path, Element: "dataset " + DatasetPath, Wrapped: err}
	}
	defer dset.Close()

	space := dset.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	if err != nil || len(dims) == 0 {
		return nil, &FormatError{Path: path, Element: "dataspace extent", Wrapped: err}
	}

	samples := make([]float64, int(dims[0]))
	if err := dset.Read(&samples); err != nil {
		return nil, &FormatError{Path: path, Element: "strain samples", Wrapped: err}
	}

	dt, err := readFloatAttr(dset, attrSpacing)
	if err != nil {
		return nil, &FormatError{Path: path, Element: "attribute " + attrSpacing, Wrapped: err}
	}
	if dt <= 0 {
		return nil, &FormatError{Path: path, Element: "attribute " + attrSpacing}
	}

	gpsStart, err := readFloatAttr(dset, attrStart)
	if err != nil {
		return nil, &FormatError{Path: path, Element: "attribute " + attrStart, Wrapped: err}
	}

	// Npoints, when present, must agree with the dataset extent: a mismatch
	// means a truncated acquisition.
	if n, err := readIntAttr(dset, attrNpoints); err == nil && n != int64(len(samples)) {
		return nil, &FormatError{
			Path:    path,
			Element: fmt.Sprintf("%s (declared %d, stored %d)", attrNpoints, n, len(samples)),
		}
	}

	return strain.New(samples, 1.0/dt, gpsStart), nil
}

func readFloatAttr(dset *hdf5.Dataset, name string) (float64, error) {
	attr, err := dset.OpenAttribute(name)
	if err != nil {
		return 0, err
	}
	defer attr.Close()

	var v float64
	if err := attr.Read(&v, hdf5.T_NATIVE_DOUBLE); err != nil {
		return 0, err
	}
	return v, nil
}

func readIntAttr(dset *hdf5.Dataset, name string) (int64, error) {
	attr, err := dset.OpenAttribute(name)
	if err != nil {
		return 0, err
	}
	defer attr.Close()

	var v int64
	if err := attr.Read(&v, hdf5.T_NATIVE_INT64); err != nil {
		return 0, err
	}
	return v, nil
}
