package repository

import sq "github.com/Masterminds/squirrel"

// psql is the statement builder shared by all repositories, configured
// for Postgres-style $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
