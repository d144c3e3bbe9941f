package schema

import "forum/internal/db"

type tableDDL struct {
	user     string
	question string
}

// SQLite ignores VARCHAR lengths, so its tables spell the bounds out as CHECKs.
var ddlByDialect = map[db.Dialect]tableDDL{
	db.Postgres: {
		user: `
		CREATE TABLE IF NOT EXISTS "User" (
			user_id SERIAL,
			user_name VARCHAR(255) NOT NULL,
			PRIMARY KEY (user_id)
		)`,
		question: `
		CREATE TABLE IF NOT EXISTS "Question" (
			question_id SERIAL,
			user_id INTEGER,
			title VARCHAR(255) NOT NULL,
			content VARCHAR(1000) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (question_id),
			FOREIGN KEY (user_id) REFERENCES "User"(user_id)
		)`,
	},
	db.SQLite: {
		user: `
		CREATE TABLE IF NOT EXISTS "User" (
			user_id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_name VARCHAR(255) NOT NULL CHECK (length(user_name) <= 255)
		)`,
		question: `
		CREATE TABLE IF NOT EXISTS "Question" (
			question_id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER,
			title VARCHAR(255) NOT NULL CHECK (length(title) <= 255),
			content VARCHAR(1000) NOT NULL CHECK (length(content) <= 1000),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES "User"(user_id)
		)`,
	},
}
