package evtfilter

type Configuration struct {
	MaxEvents      int         `json:"max_events" yaml:"max_events"`
	Verbosity      int         `json:"verbosity" yaml:"verbosity"`
	FileIn         string      `json:"file_in" yaml:"file_in"`
	MetricsFile    string      `json:"metrics_file" yaml:"metrics_file"`
	Skip           int         `json:"skip" yaml:"skip"`
	NumWorkers     int         `json:"num_workers" yaml:"num_workers"`
	CoincMode      bool        `json:"coinc_mode" yaml:"coinc_mode"`
	UseEnergy      bool        `json:"use_energy" yaml:"use_energy"`
	EnMin          float64     `json:"en_min" yaml:"en_min"`
	EnMax          float64     `json:"en_max" yaml:"en_max"`
	MinCh          int         `json:"min_ch" yaml:"min_ch"`
	SumRowsCols    bool        `json:"sum_rows_cols" yaml:"sum_rows_cols"`
	SingleMM       bool        `json:"single_mm" yaml:"single_mm"`
	UseROI         bool        `json:"use_roi" yaml:"use_roi"`
	XROI           ROI         `json:"x_roi" yaml:"x_roi"`
	YROI           ROI         `json:"y_roi" yaml:"y_roi"`
	MaxSM          int         `json:"max_sm" yaml:"max_sm"`
	SpecificMM     bool        `json:"specific_mm" yaml:"specific_mm"`
	SMNum          int         `json:"sm_num" yaml:"sm_num"`
	MMNum          int         `json:"mm_num" yaml:"mm_num"`
	ValidChannels  []ChannelID `json:"valid_channels" yaml:"valid_channels"`
	UseCoincidence bool        `json:"use_coincidence" yaml:"use_coincidence"`
	TimeWindow     float64     `json:"time_window" yaml:"time_window"`
	RunNumber      int         `json:"run_number" yaml:"run_number"`
	NoDB           bool        `json:"no_db" yaml:"no_db"`
	MappingFile    string      `json:"mapping_file" yaml:"mapping_file"`
	DBDriver       string      `json:"db_driver" yaml:"db_driver"`
	Host           string      `json:"host" yaml:"host"`
	User           string      `json:"user" yaml:"user"`
	Passwd         string      `json:"pass" yaml:"pass"`
	DBName         string      `json:"dbname" yaml:"dbname"`
}

var configuration Configuration

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}
