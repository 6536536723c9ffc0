package main

import "github.com/vietvoice/voicebank/cmd"

func main() {
	cmd.Execute()
}
