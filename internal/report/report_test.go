package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderritik/pgstructure/internal/catalog"
)

// buildChain assembles a tiny Db with three tables chained by foreign keys:
// orders -> customers, order_items -> orders, bypassing the Assembler
// entirely since report operates purely over the already-built catalog
// model.
func buildChain(t *testing.T) *catalog.Db {
	t.Helper()
	db := catalog.NewDb("testdb", "170000", catalog.DefaultConfig())
	schema := catalog.NewSchema(1, "public", db)
	require.NoError(t, db.Schemas.Add(schema))

	customers := catalog.NewEntity(10, "customers", catalog.EntityTable, schema, db)
	orders := catalog.NewEntity(11, "orders", catalog.EntityTable, schema, db)
	items := catalog.NewEntity(12, "order_items", catalog.EntityTable, schema, db)
	require.NoError(t, schema.Tables.Add(customers))
	require.NoError(t, schema.Tables.Add(orders))
	require.NoError(t, schema.Tables.Add(items))

	ordersToCustomers := &catalog.Constraint{
		Name:            "fk_orders_customer",
		Kind:            catalog.ConstraintForeignKey,
		Parent:          orders,
		ReferencedTable: customers,
	}
	itemsToOrders := &catalog.Constraint{
		Name:            "fk_items_order",
		Kind:            catalog.ConstraintForeignKey,
		Parent:          items,
		ReferencedTable: orders,
	}
	require.NoError(t, orders.Constraints.Add(ordersToCustomers))
	require.NoError(t, items.Constraints.Add(itemsToOrders))
	customers.ForeignKeysToThis = append(customers.ForeignKeysToThis, ordersToCustomers)
	orders.ForeignKeysToThis = append(orders.ForeignKeysToThis, itemsToOrders)

	return db
}

func TestAnalyzeTopologyChain(t *testing.T) {
	db := buildChain(t)
	topo := AnalyzeTopology(db)

	assert.Equal(t, 3, topo.Nodes)
	assert.Equal(t, 2, topo.Edges)
	assert.Equal(t, 1, topo.Components)
	assert.Equal(t, 3, topo.LongestChain)
}

func TestCheckCyclesDetectsSelfReference(t *testing.T) {
	db := catalog.NewDb("testdb", "170000", catalog.DefaultConfig())
	schema := catalog.NewSchema(1, "public", db)
	require.NoError(t, db.Schemas.Add(schema))

	node := catalog.NewEntity(20, "categories", catalog.EntityTable, schema, db)
	require.NoError(t, schema.Tables.Add(node))

	selfFK := &catalog.Constraint{
		Name:            "fk_category_parent",
		Kind:            catalog.ConstraintForeignKey,
		Parent:          node,
		ReferencedTable: node,
	}
	require.NoError(t, node.Constraints.Add(selfFK))
	node.ForeignKeysToThis = append(node.ForeignKeysToThis, selfFK)

	cycles := CheckCycles(db)
	require.Len(t, cycles, 1)
	assert.Equal(t, node, cycles[0][0])
}

func TestCheckIndexCoverageFlagsUnindexedFK(t *testing.T) {
	db := buildChain(t)
	coverage := CheckIndexCoverage(db)

	assert.Equal(t, 2, coverage.TotalFKs)
	assert.Equal(t, 0, coverage.IndexedFKs)
	assert.Len(t, coverage.Missing, 2)
}

func TestDetectGodObjectsBelowThreshold(t *testing.T) {
	db := buildChain(t)
	assert.Empty(t, DetectGodObjects(db))
}
