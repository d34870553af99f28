package programs

// Program is one known program of the station, loaded from <slug>.yml.
type Program struct {
	Slug      string   // Derived from filename (without .yml extension)
	Name      string   `yaml:"name"`
	Frequency string   `yaml:"frequency"`
	Schedule  string   `yaml:"schedule"`
	Aliases   []string `yaml:"aliases"`
}
