package main

import (
	"fmt"

	"github.com/draftea/feature-showcase/shared/collections"
	"github.com/draftea/feature-showcase/shared/infrastructure"
	"github.com/draftea/feature-showcase/showcase-service/domain"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const banner = "=================="

func (a *app) runAll(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Go expresses these language features in its own way")
	fmt.Fprintln(out, "\t1. Zero cost iteration with generics")
	fmt.Fprintln(out, "\t2. Closed sum types through sealed interfaces")
	fmt.Fprintln(out, "\t3. Polymorphism via interfaces")
	fmt.Fprintln(out, "\t4. Concurrency with context aware calls")
	fmt.Fprintln(out, "\t5. Map construction helpers")

	sections := []struct {
		title string
		run   func(cmd *cobra.Command) error
	}{
		{"Generic iteration", wrap(runMax)},
		{"Sum types", wrap(runStaff)},
		{"Payments", wrap(runPayments)},
		{"Polymorphism via interfaces", wrap(runShapes)},
		{"Blocking call with context", a.runFetch},
		{"Map construction", wrap(runMaps)},
	}
	for _, section := range sections {
		fmt.Fprintf(out, "%s%s%s\n", banner, section.title, banner)
		if err := section.run(cmd); err != nil {
			return err
		}
	}
	return nil
}

func wrap(run func(cmd *cobra.Command)) func(cmd *cobra.Command) error {
	return func(cmd *cobra.Command) error {
		run(cmd)
		return nil
	}
}

func runMax(cmd *cobra.Command) {
	numbers := []int{5, 4, 9, 3, 2, 1, 6, 7, 8}

	if largest, ok := domain.MaxOf(numbers); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "Max number is: %d\n", largest)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), "No max number found")
}

func runStaff(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	bob := domain.Worker{Name: "Bob", Manager: "Alice"}
	charles := domain.Worker{Name: "Charles", Manager: "Alice"}
	fmt.Fprintln(out, domain.DescribeEmployee(bob))
	fmt.Fprintln(out, domain.DescribeEmployee(charles))

	alice := domain.Manager{Name: "Alice", Subordinates: []domain.Employee{bob, charles}}
	for _, employee := range []domain.Employee{alice} {
		fmt.Fprintln(out, domain.DescribeEmployee(employee))
	}
}

func runPayments(cmd *cobra.Command) {
	out := cmd.OutOrStdout()

	cardPayment := domain.NewPayment(1000, domain.CurrencyUSD, domain.Card{
		CreditCard: domain.NewCreditCard(88866, "1234 5678 9012 3456"),
	})
	fmt.Fprintf(out, "credit card payment details:\n %s\n", cardPayment.Describe())

	checkPayment := domain.NewPayment(800, domain.CurrencyCAD, domain.Check{Number: 123456})
	fmt.Fprintf(out, "check payment details:\n %s\n", checkPayment.Describe())
}

func runShapes(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	rectangle := domain.Rectangle{Width: 3, Height: 4}
	circle := domain.Circle{Radius: 5}

	fmt.Fprintf(out, "Area: %v\n", domain.AreaOf(rectangle))
	fmt.Fprintf(out, "Area: %v\n", domain.AreaOf(circle))
	fmt.Fprintln(out, domain.DescribeShape(rectangle))
	fmt.Fprintln(out, domain.DescribeShape(circle))

	shapes := domain.Shapes{rectangle, circle}
	for _, area := range shapes.Areas() {
		fmt.Fprintf(out, "Area: %v\n", area)
	}
}

func (a *app) runFetch(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "making httpbin call")

	client := infrastructure.NewDelayClient(a.flagBaseURL, nil)
	response, err := client.Delay(cmd.Context(), a.flagDelay)
	if err != nil {
		return errors.Wrap(err, "delay call")
	}

	a.logger.Debug("delay call finished",
		zap.Int("status_code", response.StatusCode),
		zap.String("url", response.URL),
	)
	fmt.Fprintf(out, "Response: %s url=%s origin=%s\n", response.Status, response.URL, response.Origin)
	return nil
}

func runMaps(cmd *cobra.Command) {
	out := cmd.OutOrStdout()

	scoresWithoutHelper := map[string]int{}
	scoresWithHelper := collections.NewMap[string, int]()

	mutWithoutHelper := make(map[string]int)
	mutWithoutHelper["Blue"] = 3
	mutWithoutHelper["Red"] = 5
	mutWithoutHelper["Green"] = 1

	mutWithHelper := collections.MapOf(
		collections.P("Blue", 3),
		collections.P("Red", 5),
		collections.P("Green", 1),
	)

	fmt.Fprintf(out, "scores_without_helper: %v\n", scoresWithoutHelper)
	fmt.Fprintf(out, "scores_with_helper: %v\n", scoresWithHelper)
	fmt.Fprintf(out, "mut_scores_without_helper: %v\n", mutWithoutHelper)
	fmt.Fprintf(out, "mut_scores_with_helper: %v\n", mutWithHelper)
}
