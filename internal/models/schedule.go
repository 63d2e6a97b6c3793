package models

// Schedule maps a course code to the concrete tuple of CRNs selected for it.
type Schedule map[string][]string
