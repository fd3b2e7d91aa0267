package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"scifig/adapters/excel"
	"scifig/app"
	"scifig/domain/analysis"
)

func main() {
	filePath := flag.String("file", "", "path to a CSV or Excel data file")
	outcome := flag.String("outcome", "", "outcome variable column")
	group := flag.String("group", "", "group variable column")
	timeVar := flag.String("time", "", "survival time column")
	eventVar := flag.String("event", "", "event indicator column")
	testType := flag.String("test", "", "force a specific test instead of the recommendation")
	paired := flag.Bool("paired", false, "observations are paired")
	flag.Parse()

	if *filePath == "" || *outcome == "" {
		fmt.Fprintln(os.Stderr, "usage: scifig -file data.csv -outcome response [-group arm] [-time months -event status] [-test mann_whitney_u]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	table, err := excel.NewDataReader(*filePath).ReadTable()
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *filePath, err)
	}

	roles := analysis.VariableRoles{
		Outcome:  *outcome,
		Group:    *group,
		Time:     *timeVar,
		Event:    *eventVar,
		IsPaired: *paired,
	}

	orchestrator := app.NewOrchestrator()
	var workflow analysis.AnalysisWorkflow
	if *testType != "" {
		requested := analysis.TestType(*testType)
		if !requested.Valid() {
			log.Fatalf("Unknown test type %q", *testType)
		}
		workflow = orchestrator.RunRequestedTest(table, roles, requested)
	} else {
		workflow = orchestrator.RunAnalysis(table, roles)
	}

	out, err := json.MarshalIndent(workflow, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode workflow: %v", err)
	}
	fmt.Println(string(out))

	if workflow.FinalResult.Err != nil {
		os.Exit(1)
	}
}
