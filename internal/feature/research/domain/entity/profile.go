// Package entity defines the domain models for the research feature.
package entity

import "time"

// CompanyProfile is the structured result of one research run.
// It is fully populated before it leaves the usecase and is never mutated afterwards.
type CompanyProfile struct {
	Input        string            // Raw user input (company name or ticker)
	ResolvedInfo string            // Canonical name/ticker returned by the resolver
	Timestamp    time.Time         // Time the profile was stamped, right after resolution
	Sections     map[string]string // Section name -> summarized narrative
}
