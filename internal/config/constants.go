package config

// DefaultDatabasePath is where a mounted Kobo device usually exposes its
// database on Linux; override with KOBO_DATABASE_PATH or the -db flag.
const DefaultDatabasePath = "./KoboReader.sqlite"
