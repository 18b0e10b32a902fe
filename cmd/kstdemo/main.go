// Command kstdemo demonstrates building a prerequisite graph, deriving a
// learning space, and running an adaptive BLIM assessment against it.
package main

import (
	"fmt"

	"github.com/latticecourse/kst"
)

func main() {
	a := kst.MustNewItem("a", "Addition")
	b := kst.MustNewItem("b", "Subtraction")
	c := kst.MustNewItem("c", "Multiplication")
	d := kst.MustNewItem("d", "Division")

	domain, err := kst.NewDomain(a, b, c, d)
	if err != nil {
		panic(err)
	}

	graph, err := kst.NewPrerequisiteGraph(domain, []kst.Edge{
		{From: "a", To: "c"},
		{From: "b", To: "c"},
		{From: "c", To: "d"},
	})
	if err != nil {
		panic(err)
	}

	rel, err := graph.ToSurmiseRelation()
	if err != nil {
		panic(err)
	}

	states := rel.ToKnowledgeSpaceStates()
	space, err := kst.NewLearningSpace(domain, states)
	if err != nil {
		panic(err)
	}

	fmt.Println("=== Learning Space ===")
	for _, layer := range space.Gradation() {
		for _, s := range layer {
			fmt.Printf("  %s\n", s)
		}
	}

	path, length := graph.LongestPath()
	fmt.Printf("\nLongest prerequisite chain (%d steps): %v\n\n", length, path)

	params, err := kst.UniformBLIMParameters(domain, 0.05, 0.1)
	if err != nil {
		panic(err)
	}

	session, err := kst.StartSession(domain, space.States(), params, 0.1)
	if err != nil {
		panic(err)
	}

	truth := kst.NewKnowledgeState(a, b, c)
	fmt.Println("=== Adaptive Assessment ===")
	fmt.Printf("True state: %s\n", truth)

	session, err = kst.RunAdaptive(session, truth)
	if err != nil {
		panic(err)
	}

	summary := session.Summary()
	for _, step := range summary.Steps {
		fmt.Printf("  asked %-4s correct=%-5v entropy %.3f -> %.3f  MAP=%s\n",
			step.ItemID, step.Correct, step.EntropyBefore, step.EntropyAfter, step.MapAfter)
	}
	fmt.Printf("\nFinal MAP estimate: %s (confidence %.1f%%)\n", summary.FinalMap, summary.Confidence*100)
}
