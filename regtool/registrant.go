package main

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/sandrolain/regkit/pkg/registrant"
	"github.com/sandrolain/regkit/pkg/toolutil"
)

func (a *app) addRegistrant() error {
	toolutil.PrintSeparator()

	name, err := a.prompt.String("Enter name: ")
	if err != nil {
		return err
	}
	age, err := a.prompt.Int("Enter age: ")
	if err != nil {
		return err
	}
	city, err := a.prompt.String("Enter city: ")
	if err != nil {
		return err
	}
	email, err := a.prompt.String("Enter email: ")
	if err != nil {
		return err
	}
	lat, err := a.prompt.Float("Enter latitude: ")
	if err != nil {
		return err
	}
	lon, err := a.prompt.Float("Enter longitude: ")
	if err != nil {
		return err
	}

	if err := a.store.Insert(a.ctx, registrant.New(name, age, city, email, lat, lon)); err != nil {
		return err
	}
	toolutil.PrintSuccess("Added new registrant: %s", name)
	return nil
}

func (a *app) updateRegistrant() error {
	toolutil.PrintSeparator()

	email, err := a.prompt.String("Enter the email address of the registrant to update: ")
	if err != nil {
		return err
	}
	notes, err := a.prompt.String("Enter the notes to add: ")
	if err != nil {
		return err
	}

	matched, err := a.store.AddNotes(a.ctx, email, notes)
	if err != nil {
		return err
	}
	if matched == 0 {
		toolutil.PrintInfo("No registrant matched email: %s", email)
	}
	toolutil.PrintSuccess("Updated registrant with email: %s", email)
	return nil
}

func (a *app) queryRegistrant() error {
	toolutil.PrintSeparator()

	email, err := a.prompt.String("Enter the email address to query: ")
	if err != nil {
		return err
	}

	doc, err := a.store.FindByEmail(a.ctx, email)
	if errors.Is(err, registrant.ErrNotFound) {
		fmt.Printf("No registrant found with the email address: %s\n", email)
		return nil
	}
	if err != nil {
		return err
	}

	sections, body := registrantMessage(doc)
	toolutil.PrintColoredMessage("Registrant Details", sections, body, toolutil.CTJSON)
	return nil
}

// registrantMessage renders a registrant document as key/value sections
// with its extended-JSON body; the body is omitted when it cannot be
// marshalled.
func registrantMessage(doc bson.D) ([]toolutil.MessageSection, []byte) {
	items := make([]toolutil.KV, 0, len(doc))
	for _, field := range doc {
		items = append(items, toolutil.KV{Key: field.Key, Value: fmt.Sprintf("%v", field.Value)})
	}
	var body []byte
	if data, err := bson.MarshalExtJSON(doc, true, false); err == nil {
		body = data
	}
	return []toolutil.MessageSection{{Items: items}}, body
}

func (a *app) queryEmailDomains() error {
	toolutil.PrintSeparator()
	fmt.Println("Email Domains of Registrants with Counts (Descending Order):")

	hist, err := a.store.DomainHistogram(a.ctx)
	if err != nil {
		return err
	}
	for _, dc := range hist {
		fmt.Printf("%s: %d\n", dc.Domain, dc.Count)
	}

	// The total is counted separately and may exceed the histogram sum
	// when documents lack a usable email.
	total, err := a.store.Count(a.ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\nTotal number of registrants: %d\n", total)
	return nil
}
