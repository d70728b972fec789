// Command simplefsctl is a thin front end over package simplefs: it can
// format a new image, print the §4.F.7 debug inspection of an existing
// one, and dump a CSV inode report. It is not the interactive shell / mount
// dispatcher that spec §1 scopes out of the core — it only ever operates
// on a single disk image per invocation.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ostep-projects/simplefs"
	"github.com/ostep-projects/simplefs/disks"
)

func main() {
	app := cli.App{
		Name:  "simplefsctl",
		Usage: "format, inspect, and report on SimpleFS disk images",
		Commands: []*cli.Command{
			{
				Name:      "mkfs",
				Usage:     "create and format a new disk image",
				ArgsUsage: "IMAGE_PATH",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "blocks", Usage: "total number of blocks", Required: true},
				},
				Action: mkfs,
			},
			{
				Name:      "debug",
				Usage:     "print the superblock and inode table of an existing image",
				ArgsUsage: "IMAGE_PATH",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "blocks", Usage: "total number of blocks", Required: true},
				},
				Action: debugImage,
			},
			{
				Name:      "report",
				Usage:     "print a CSV inode occupancy report for an existing image",
				ArgsUsage: "IMAGE_PATH",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "blocks", Usage: "total number of blocks", Required: true},
				},
				Action: report,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func imagePath(c *cli.Context) (string, error) {
	path := c.Args().First()
	if path == "" {
		return "", fmt.Errorf("missing IMAGE_PATH argument")
	}
	return path, nil
}

func mkfs(c *cli.Context) error {
	path, err := imagePath(c)
	if err != nil {
		return err
	}

	disk, err := disks.CreateFileDisk(path, c.Uint("blocks"))
	if err != nil {
		return err
	}
	defer disk.Close()

	return simplefs.New(disk).Format()
}

func debugImage(c *cli.Context) error {
	path, err := imagePath(c)
	if err != nil {
		return err
	}

	disk, err := disks.OpenFileDisk(path, c.Uint("blocks"))
	if err != nil {
		return err
	}
	defer disk.Close()

	simplefs.Debug(disk, os.Stdout)
	return nil
}

func report(c *cli.Context) error {
	path, err := imagePath(c)
	if err != nil {
		return err
	}

	disk, err := disks.OpenFileDisk(path, c.Uint("blocks"))
	if err != nil {
		return err
	}
	defer disk.Close()

	fs := simplefs.New(disk)
	if err := fs.Mount(); err != nil {
		return err
	}
	defer fs.Unmount()

	return fs.WriteInodeReport(os.Stdout)
}
