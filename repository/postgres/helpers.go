package postgres

// nullString stores an absent description as SQL NULL instead of an
// empty string, matching the nullable column in the migration.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
