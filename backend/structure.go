package backend

import (
	jsoniter "github.com/json-iterator/go"
)

type Metric string

const (
	MetricDPS Metric = "dps"
	MetricHPS Metric = "hps"
)

func (m Metric) Valid() bool {
	return m == MetricDPS || m == MetricHPS
}

func (m Metric) Label() string {
	if m == MetricHPS {
		return "HPS"
	}
	return "DPS"
}

//////////////////////////////////////////////////

type Fight struct {
	IDs            []int    `json:"ids"`
	Name           string   `json:"name"`
	IsTrash        bool     `json:"isTrash"`
	EncounterID    int      `json:"encounterID"`
	Kill           bool     `json:"kill"`
	BossPercentage *float64 `json:"bossPercentage,omitempty"`
	Duration       float64  `json:"duration"`
}

// IsBoss reports whether the fight is a boss encounter.
func (f Fight) IsBoss() bool {
	return !f.IsTrash && f.EncounterID != 0
}

type DPSEntry struct {
	Name   string  `json:"name"`
	DPS    float64 `json:"dps"`
	Damage float64 `json:"damage"`
}

type HealingEntry struct {
	Name     string  `json:"name"`
	HPS      float64 `json:"hps"`
	Healing  float64 `json:"healing"`
	Overheal float64 `json:"overheal"`
}

//////////////////////////////////////////////////

type Ability struct {
	Name      string  `json:"name"`
	Total     float64 `json:"total"`
	HitCount  int     `json:"hitCount"`
	TickCount int     `json:"tickCount"`
}

type Side struct {
	Name       string    `json:"name"`
	Class      string    `json:"class"`
	Spec       string    `json:"spec"`
	Duration   float64   `json:"duration"`
	Total      float64   `json:"total"`
	Throughput float64   `json:"throughput"`
	Abilities  []Ability `json:"abilities"`
}

type ComparisonResult struct {
	EncounterName string `json:"encounterName"`
	Player        Side   `json:"player"`
	Top           Side   `json:"top"`
}

type CompareQuery struct {
	FightID string
	Player  string
	Metric  Metric
}

//////////////////////////////////////////////////

type SimExport struct {
	Name      string              `json:"name"`
	Race      string              `json:"race"`
	ClassName string              `json:"className"`
	Spec      string              `json:"spec"`
	Gear      jsoniter.RawMessage `json:"gear"`
}

//////////////////////////////////////////////////

type GuildLog struct {
	Code      string `json:"code"`
	Title     string `json:"title"`
	Zone      string `json:"zone"`
	Owner     string `json:"owner"`
	StartTime int64  `json:"startTime"`
}

type PlayerBoss struct {
	FightID  int     `json:"fightId"`
	Boss     string  `json:"boss"`
	Duration float64 `json:"duration"`
	Kill     bool    `json:"kill"`
	DPS      float64 `json:"dps"`
}

type PlayerLog struct {
	ReportCode string       `json:"reportCode"`
	Zone       string       `json:"zone"`
	Title      string       `json:"title"`
	OverallDPS float64      `json:"overallDps"`
	Bosses     []PlayerBoss `json:"bosses"`
}

type GearDisplay struct {
	Slot    int     `json:"slot"`
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Ilvl    float64 `json:"ilvl"`
	Quality int     `json:"quality"`
	Enchant string  `json:"enchant"`
}

type PlayerExport struct {
	SimExport
	GearDisplay []GearDisplay `json:"gearDisplay"`
	AvgIlvl     float64       `json:"avgIlvl"`
}

type PlayerSummary struct {
	Player      string        `json:"player"`
	PlayerClass string        `json:"playerClass"`
	Spec        string        `json:"spec"`
	Logs        []PlayerLog   `json:"logs"`
	Export      *PlayerExport `json:"export"`
}
