package reducer

import (
	hdf5 "github.com/jmbenlloch/go-hdf5"
)

type FrameDataHDF5 struct {
	frame_number int32
	orig_index   int32
	n_events     int32
	timestamp    float64
}

type RunInfoHDF5 struct {
	run_number int32
	detector   [STRLEN]byte
}

type OffsetHDF5 struct {
	xoff float32
	yoff float32
}

type DQIHDF5 struct {
	dqi int32
}

type ParamHDF5 struct {
	paramStr [STRLEN]byte
	value    float64
}

const STRLEN = 20

func convertToHdf5String(s string) [STRLEN]byte {
	var byteArray [STRLEN]byte
	copy(byteArray[:], s)
	return byteArray
}

func openFile(fname string) *hdf5.File {
	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		panic(err)
	}
	return f
}

func createGroup(file *hdf5.File, groupName string) *hdf5.Group {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		panic(err)
	}
	return g
}

func createTable(group *hdf5.Group, name string, datatype interface{}) *hdf5.Dataset {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	file_space, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		panic(err)
	}

	// create property list
	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		panic(err)
	}

	chunks := []uint{32768}
	plist.SetChunk(chunks)
	plist.SetDeflate(configuration.CompressionLevel)

	// create the memory data type
	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		panic(err)
	}

	// create the dataset
	dset, err := group.CreateDatasetWith(name, dtype, file_space, plist)
	if err != nil {
		panic(err)
	}
	return dset
}

func createImageArray(group *hdf5.Group, name string, height int, width int) *hdf5.Dataset {
	dimsArray := []uint{0, 0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDimsArray := []uint{uint(unlimitedDims), uint(width)}
	chunks := []uint{1, uint(width)}

	file_spaceArray, err := hdf5.CreateSimpleDataspace(dimsArray, maxDimsArray)
	if err != nil {
		panic(err)
	}

	plistArray, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		panic(err)
	}
	plistArray.SetChunk(chunks)
	plistArray.SetDeflate(configuration.CompressionLevel)

	dsetArray, err := group.CreateDatasetWith(name, hdf5.T_NATIVE_INT32, file_spaceArray, plistArray)
	if err != nil {
		panic(err)
	}
	return dsetArray
}

func writeEntryToTable[T any](dataset *hdf5.Dataset, data T, evtCounter int) {
	array := []T{data}
	writeArrayToTable(dataset, &array, evtCounter)
}

func writeArrayToTable[T any](dataset *hdf5.Dataset, data *[]T, evtCounter int) {
	length := uint(len(*data))
	dims := []uint{length}
	dataspace, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		panic(err)
	}

	// extend
	entriesInFile := uint(evtCounter)
	newsize := []uint{entriesInFile + length}
	dataset.Resize(newsize)
	filespace := dataset.Space()

	start := []uint{entriesInFile}
	count := []uint{length}
	filespace.SelectHyperslab(start, nil, count, nil)

	err = dataset.WriteSubset(data, dataspace, filespace)
	if err != nil {
		panic(err)
	}

	dataspace.Close()
	filespace.Close()
}

func writeImage(dataset *hdf5.Dataset, data *[]int32, height int, width int) {
	newsize := []uint{uint(height), uint(width)}
	dataset.Resize(newsize)
	filespace := dataset.Space()

	start := []uint{0, 0}
	count := []uint{uint(height), uint(width)}
	filespace.SelectHyperslab(start, nil, count, nil)

	dataspace, err := hdf5.CreateSimpleDataspace(count, nil)
	if err != nil {
		panic(err)
	}

	err = dataset.WriteSubset(data, dataspace, filespace)
	if err != nil {
		panic(err)
	}

	dataspace.Close()
	filespace.Close()
}
