package version

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Заполняются через -ldflags "-X skirmish-server/internal/version.BuildDate=..."
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

// Номер сборки считается в днях от этой даты.
var buildEpoch = time.Date(2025, time.December, 4, 0, 0, 0, 0, time.UTC)

// VersionInfo отдается на GET /version.
type VersionInfo struct {
	BuildID    int    `json:"buildId"`
	BuildDate  string `json:"buildDate,omitempty"`
	Commit     string `json:"commit"`
	Branch     string `json:"branch"`
	CI         string `json:"ci"`
	Calculated bool   `json:"calculated"`
	Error      string `json:"error,omitempty"`
}

// CalculateBuildID возвращает номер текущей сборки.
func CalculateBuildID() (int, error) {
	return buildIDFor(BuildDate)
}

func buildIDFor(date string) (int, error) {
	if date == "" {
		return 0, fmt.Errorf("BuildDate is empty")
	}

	t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid BuildDate %q: %w", date, err)
	}
	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("BuildDate %s is before epoch", date)
	}

	// Обе даты в UTC, поэтому часы/24 дают целое число дней.
	return int(t.Sub(buildEpoch).Hours() / 24), nil
}

// Info собирает метаданные сборки. Пустые поля заменяются на unknown/local.
func Info() VersionInfo {
	info := VersionInfo{
		BuildDate: BuildDate,
		Commit:    coalesce(BuildCommit, "unknown"),
		Branch:    coalesce(BuildBranch, "unknown"),
		CI:        coalesce(BuildCI, "local"),
	}

	id, err := CalculateBuildID()
	if err != nil {
		info.Error = err.Error()
		return info
	}

	info.BuildID = id
	info.Calculated = true
	return info
}

// Fields - то же самое для логгера при старте.
func (v VersionInfo) Fields() logrus.Fields {
	f := logrus.Fields{
		"build_commit": v.Commit,
		"build_branch": v.Branch,
		"build_ci":     v.CI,
	}
	if v.Calculated {
		f["build_id"] = v.BuildID
		f["build_date"] = v.BuildDate
	}
	return f
}

func (v VersionInfo) String() string {
	if !v.Calculated {
		return fmt.Sprintf("Build unknown (%s)", v.Error)
	}
	return fmt.Sprintf("Build %d (%s) commit[%s] branch[%s] ci[%s]", v.BuildID, v.BuildDate, v.Commit, v.Branch, v.CI)
}

// String возвращает читаемую строку сборки.
func String() string {
	return Info().String()
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
