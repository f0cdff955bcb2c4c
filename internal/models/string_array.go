package models

// StringSlice is a []string stored as a JSON column in MySQL.
type StringSlice []string
