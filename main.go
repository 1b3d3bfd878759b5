package main

import "github.com/CalumMcM/EcoVadis-Churn-Prediction/cmd"

func main() {
	cmd.Execute()
}
