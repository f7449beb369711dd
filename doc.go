// Package ebsreaper seeks to save you money on your AWS bill by
// deleting EBS volumes that are not attached to anything.
//
// Volumes left behind by terminated instances, failed deployments, or
// a forgotten "delete on termination" flag sit in the "available"
// state and are billed at the full GB-month rate until somebody
// removes them. Nothing else in the account references them.
//
// # Sweep
//
// A sweep enumerates every region enabled for the account, lists the
// volumes in each region whose status is "available" (all pages), and
// deletes each one whose attachment list is empty. Attached volumes
// are logged and skipped. A failed deletion is logged with the region,
// the volume ID, and the AWS error and the sweep moves on. Failing to
// enumerate regions or to list a region's volumes stops the run.
//
// Deletion is irreversible. Snapshots are not taken and not touched.
// Set DryRun to list what would be deleted without deleting it.
//
// # Usage
//
// Create a ReaperInput, pass it to New, and call Run on the returned
// Reaper. To run as a scheduled Lambda function hand HandleRequest to
// lambda.Start; it always answers with status 200 once the sweep has
// completed.
//
// Sample
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//
//		"github.com/GESkunkworks/ebsreaper"
//	)
//
//	func main() {
//		sess, err := ebsreaper.NewSession("")
//		if err != nil { panic(err) }
//		r, err := ebsreaper.New(&ebsreaper.ReaperInput{Session: sess})
//		if err != nil { panic(err) }
//		res, err := r.Run(context.Background())
//		if err != nil { panic(err) }
//		fmt.Println(res.Message, res.Deleted)
//	}
package ebsreaper
