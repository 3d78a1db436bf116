package reducer

type Configuration struct {
	MaxFrames        int    `json:"max_frames"`
	Verbosity        int    `json:"verbosity"`
	FileIn           string `json:"file_in"`
	FileOut          string `json:"file_out"`
	Detector         string `json:"detector"`
	NoDB             bool   `json:"no_db"`
	Host             string `json:"host"`
	User             string `json:"user"`
	Passwd           string `json:"pass"`
	DBName           string `json:"dbname"`
	Unattended       bool   `json:"unattended"`
	WriteData        bool   `json:"write_data"`
	Resolution       int    `json:"resolution"`
	ImageSize        int    `json:"image_size"`
	CompressionLevel int    `json:"compression_level"`
}

var configuration Configuration

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}
