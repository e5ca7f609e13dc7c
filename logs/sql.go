package logs

const createSolveTable = `
CREATE TABLE IF NOT EXISTS solves (
  time datetime not null,
  position varchar not null,
  moves int,
  score int,
  nodes int,
  duration_us int,
  engine varchar
)`

const insertStmt = `
INSERT INTO solves (time, position, moves, score, nodes, duration_us, engine)
VALUES (:time, :position, :moves, :score, :nodes, :duration_us, :engine)
`

const selectRecentStmt = `
SELECT time, position, moves, score, nodes, duration_us, engine
  FROM solves
 ORDER BY time DESC
 LIMIT ?
`
