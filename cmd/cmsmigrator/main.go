// Command cmsmigrator migrates a source content tree into a CMS.
package main

import "github.com/sitecraft/cmsmigrator/internal/cli"

func main() {
	cli.Execute()
}
