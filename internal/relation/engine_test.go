package relation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderritik/pgstructure/internal/catalog"
)

func newTestDb(t *testing.T, strategy string) (*catalog.Db, *catalog.Schema) {
	t.Helper()
	cfg := catalog.DefaultConfig()
	cfg.NamingStrategy = strategy
	db := catalog.NewDb("testdb", "170000", cfg)
	schema := catalog.NewSchema(1, "public", db)
	require.NoError(t, db.Schemas.Add(schema))
	return db, schema
}

func newColumn(name string) *catalog.Column {
	return &catalog.Column{Name: name}
}

func TestManyToOneShortNaming(t *testing.T) {
	db, schema := newTestDb(t, "short")

	authors := catalog.NewEntity(1, "authors", catalog.EntityTable, schema, db)
	books := catalog.NewEntity(2, "books", catalog.EntityTable, schema, db)
	require.NoError(t, schema.Tables.Add(authors))
	require.NoError(t, schema.Tables.Add(books))

	fk := &catalog.Constraint{
		Name:            "fk_books_author",
		Kind:            catalog.ConstraintForeignKey,
		Parent:          books,
		ReferencedTable: authors,
		Columns:         []*catalog.Column{newColumn("author_id")},
	}
	require.NoError(t, books.Constraints.Add(fk))
	authors.ForeignKeysToThis = append(authors.ForeignKeysToThis, fk)

	db.Relations = NewEngine(db)

	m2o := books.ManyToOne()
	require.Len(t, m2o, 1)
	assert.Equal(t, "authors", m2o[0].Name)
	assert.Same(t, authors, m2o[0].TargetTable)

	o2m := authors.OneToMany()
	require.Len(t, o2m, 1)
	assert.Equal(t, "books", o2m[0].Name)
}

func TestManyToOneOptimalNamingStripsIDSuffix(t *testing.T) {
	db, schema := newTestDb(t, "optimal")

	authors := catalog.NewEntity(1, "authors", catalog.EntityTable, schema, db)
	books := catalog.NewEntity(2, "books", catalog.EntityTable, schema, db)
	require.NoError(t, schema.Tables.Add(authors))
	require.NoError(t, schema.Tables.Add(books))

	fk := &catalog.Constraint{
		Name:            "fk_books_author",
		Kind:            catalog.ConstraintForeignKey,
		Parent:          books,
		ReferencedTable: authors,
		Columns:         []*catalog.Column{newColumn("author_id")},
	}
	require.NoError(t, books.Constraints.Add(fk))

	db.Relations = NewEngine(db)

	m2o := books.ManyToOne()
	require.Len(t, m2o, 1)
	assert.Equal(t, "author", m2o[0].Name)
}

func TestManyToManyDetectsJoinTable(t *testing.T) {
	db, schema := newTestDb(t, "short")

	authors := catalog.NewEntity(1, "authors", catalog.EntityTable, schema, db)
	books := catalog.NewEntity(2, "books", catalog.EntityTable, schema, db)
	authorBooks := catalog.NewEntity(3, "author_books", catalog.EntityTable, schema, db)
	require.NoError(t, schema.Tables.Add(authors))
	require.NoError(t, schema.Tables.Add(books))
	require.NoError(t, schema.Tables.Add(authorBooks))

	authorCol := newColumn("author_id")
	bookCol := newColumn("book_id")

	toAuthor := &catalog.Constraint{
		Name:            "fk_ab_author",
		Kind:            catalog.ConstraintForeignKey,
		Parent:          authorBooks,
		ReferencedTable: authors,
		Columns:         []*catalog.Column{authorCol},
	}
	toBook := &catalog.Constraint{
		Name:            "fk_ab_book",
		Kind:            catalog.ConstraintForeignKey,
		Parent:          authorBooks,
		ReferencedTable: books,
		Columns:         []*catalog.Column{bookCol},
	}
	require.NoError(t, authorBooks.Constraints.Add(toAuthor))
	require.NoError(t, authorBooks.Constraints.Add(toBook))
	authors.ForeignKeysToThis = append(authors.ForeignKeysToThis, toAuthor)
	books.ForeignKeysToThis = append(books.ForeignKeysToThis, toBook)

	pk := &catalog.Constraint{
		Name: "pk_author_books",
		Kind: catalog.ConstraintPrimaryKey,
		Parent: authorBooks,
		Index: &catalog.Index{
			Table: authorBooks,
			Name:  "pk_author_books",
			ColumnsAndExpressions: []catalog.IndexElement{
				{Column: authorCol},
				{Column: bookCol},
			},
		},
	}
	require.NoError(t, authorBooks.Constraints.Add(pk))

	db.Relations = NewEngine(db)

	m2m := authors.ManyToMany()
	require.Len(t, m2m, 1)
	assert.Same(t, books, m2m[0].TargetTable)
	assert.Same(t, authorBooks, m2m[0].JoinTable)
}

func TestDisambiguateSuffixesCollisions(t *testing.T) {
	seen := map[string]bool{}
	first := disambiguate(seen, "books", "fk_a", "")
	second := disambiguate(seen, "books", "fk_b", "")
	assert.Equal(t, "books", first)
	assert.Equal(t, "books__fk_b", second)
}
