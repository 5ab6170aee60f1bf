// Package framework registers weighted test cases and runs them in name
// order, counting and scoring the checks each case issues.
//
// Cases register themselves from an init function:
//
//	func init() {
//		framework.Register("parse_numbers", parseNumbers, framework.WithWeight(2))
//	}
//
//	func parseNumbers(c *framework.C) error {
//		n, err := strconv.Atoi("42")
//		if err != nil {
//			return c.Fail("atoi: %v", err)
//		}
//		framework.Equal(c, n, 42)
//		return nil
//	}
package framework
