package types

// ContextUserKey is the gin context key the auth middleware stores the
// authenticated caller under.
const ContextUserKey = "user"
