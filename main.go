/*
Copyright © 2025 UnityKit Authors
*/
package main

import "github.com/unitykit/metaguard/cmd"

func main() {
	cmd.Execute()
}
