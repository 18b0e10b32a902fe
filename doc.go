// Package kst implements the combinatorial core of Knowledge Space Theory
// (KST): domains and knowledge states, the prerequisite algebra (surmise
// relations and prerequisite DAGs), knowledge/learning spaces with axiom
// validation, and adaptive assessment under the Basic Local Independence
// Model (BLIM).
//
// Parameter estimation (package kst/estimation) and the Markov learning
// model (package kst/learning) build on top of this package the way
// sky-flux's optimizer subpackage builds on its scheduler core.
//
// Basic usage:
//
//	domain, _ := kst.NewDomain(kst.MustNewItem("a", ""), kst.MustNewItem("b", ""))
//	graph, _ := kst.NewPrerequisiteGraph(domain, []kst.Edge{{From: "a", To: "b"}})
//	rel, _ := graph.ToSurmiseRelation()
//	states := rel.ToKnowledgeSpaceStates()
//	space, _ := kst.NewLearningSpace(domain, states)
package kst
