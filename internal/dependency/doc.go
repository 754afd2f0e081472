// Package dependency provides a small directed graph used to order modules
// by their declared dependencies.
//
// Nodes are added with AddNode and keep their insertion order. Ordering
// queries (TopologicalOrder, Closure) place dependencies before dependents,
// break ties by insertion order, and fail with a *MissingDependencyError or
// a *CycleError when the graph is not a DAG.
//
//	g := dependency.New()
//	g.AddNode(dependency.Node{ID: "Orders", DependsOn: []dependency.NodeID{"Customers"}})
//	g.AddNode(dependency.Node{ID: "Customers"})
//	order, err := g.TopologicalOrder()
//	// order: [Customers Orders]
package dependency
