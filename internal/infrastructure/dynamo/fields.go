package dynamo

// fieldUpdatedAt is stamped into every update expression so record freshness
// never depends on callers remembering to set it.
const fieldUpdatedAt = "updated_at"
