// Package gwosc reads detector strain files in the GWOSC HDF5 layout.
//
// A strain file carries a single contiguous acquisition in the
// strain/Strain dataset, with the sample interval and GPS start time
// stored as attributes on the dataset:
//
//	series, err := gwosc.Load("H-H1_GWOSC_16KHZ_R1-1126259447-32.hdf5")
//	if err != nil { ... }
//	fmt.Println(series.Rate, series.GPSStart)
//
// A missing file surfaces as fs.ErrNotExist; a file that opens but lacks
// the expected dataset or attributes surfaces as a [*FormatError].
package gwosc
