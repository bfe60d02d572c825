package main

import (
	"oss.terrastruct.com/amrviz/amrcli"
	"oss.terrastruct.com/amrviz/lib/xmain"
)

func main() {
	xmain.Main(amrcli.Run)
}
