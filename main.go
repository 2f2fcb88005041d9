// helpdock is a terminal chat widget for a site assistant service.
package main

import "github.com/linanwx/helpdock/cmd"

func main() {
	cmd.Execute()
}
