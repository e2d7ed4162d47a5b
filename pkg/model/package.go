// Package model provides the data structures shared by pakr's catalog,
// installation pipeline and installed-package store.
package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// PackageDescriptor is the metadata a source publishes for one installable package.
type PackageDescriptor struct {
	Name        string `json:"name" yaml:"name"`
	Version     string `json:"version" yaml:"version"`
	DownloadURL string `json:"downloadURL" yaml:"downloadURL"`
	Hash        string `json:"hash,omitempty" yaml:"hash,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// HasHash reports whether the descriptor carries an expected digest.
func (d *PackageDescriptor) HasHash() bool {
	return strings.TrimSpace(d.Hash) != ""
}

// DisplayDescription returns the description or a placeholder when none is published.
func (d *PackageDescriptor) DisplayDescription() string {
	if d.Description == "" {
		return "No description available"
	}
	return d.Description
}

// InstalledPackage is a PackageDescriptor that completed the installation pipeline.
type InstalledPackage struct {
	PackageDescriptor `yaml:",inline"`
	InstallDate       time.Time `json:"install_date" yaml:"install_date"`
}

// NewInstalledPackage stamps a descriptor with its install time.
func NewInstalledPackage(desc PackageDescriptor, at time.Time) *InstalledPackage {
	return &InstalledPackage{PackageDescriptor: desc, InstallDate: at}
}

// localDateLayouts are timestamp forms without a zone offset; they are read as local time.
var localDateLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// UnmarshalJSON also accepts the camel-case installDate key and ISO-8601
// timestamps that carry no zone offset.
func (p *InstalledPackage) UnmarshalJSON(data []byte) error {
	type plain InstalledPackage
	var aux struct {
		plain
		InstallDate      json.RawMessage `json:"install_date,omitempty"`
		InstallDateCamel json.RawMessage `json:"installDate,omitempty"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = InstalledPackage(aux.plain)

	raw := aux.InstallDate
	if isNullDate(raw) {
		raw = aux.InstallDateCamel
	}
	date, err := parseInstallDate(raw)
	if err != nil {
		return err
	}
	p.InstallDate = date
	return nil
}

func isNullDate(raw json.RawMessage) bool {
	v := strings.TrimSpace(string(raw))
	return v == "" || v == "null" || v == `""`
}

func parseInstallDate(raw json.RawMessage) (time.Time, error) {
	if isNullDate(raw) {
		return time.Time{}, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, fmt.Errorf("install date: %w", err)
	}
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range localDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("install date %q is not an ISO-8601 timestamp", s)
}
