package database

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*UserRepo
	*BoardRepo
	*ColumnRepo
	*TaskRepo
}

// NewRepository creates a new Repository running its queries through q,
// which is either the database handle or an open transaction.
func NewRepository(q Querier) *Repository {
	return &Repository{
		UserRepo:   &UserRepo{q: q},
		BoardRepo:  &BoardRepo{q: q},
		ColumnRepo: &ColumnRepo{q: q},
		TaskRepo:   &TaskRepo{q: q},
	}
}
