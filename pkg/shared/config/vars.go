package config

type Config struct {
	Logger  Logger  `yaml:"logger"`
	Scoring Scoring `yaml:"scoring"`
	Report  Report  `yaml:"report"`
}

type Logger struct {
	Level string `yaml:"level"`
}

// Scoring overrides the built-in risk model. Empty fields fall back to
// the defaults compiled into the scoring package.
type Scoring struct {
	Weights          map[string]int `yaml:"weights"`
	CriticalKeywords []string       `yaml:"critical_keywords"`
	CriticalBonus    *int           `yaml:"critical_bonus"`
}

// Report controls which surfaces the report command emits when no
// explicit output flags are passed.
type Report struct {
	Title    string `yaml:"title"`
	Workbook *bool  `yaml:"workbook"`
	Webapp   *bool  `yaml:"webapp"`
	Sarif    *bool  `yaml:"sarif"`
}
