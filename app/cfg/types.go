package cfg

type Cfg struct {
	// Storage
	DBPath      string
	ProgramsDir string

	// HTTP
	Port         string
	BaseUrl      string
	APIAccessKey string

	// Station
	StationName   string
	AdminPassword string
	BackupURL     string

	// Maintenance scheduler
	WorkerCount       int
	SchedulerInterval int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
