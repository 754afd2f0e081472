// Package events provides the in-process event aggregator modules and
// regions use to talk to each other without holding references.
//
// Publishers name a topic (an EventReason) and pass EventData; the
// aggregator renders a human-readable message with the MessageTemplateEngine
// and hands the resulting Event to every subscriber of that topic.
//
//	agg := events.NewAggregator()
//	token := agg.Subscribe(events.TopicModuleLoaded, func(e events.Event) {
//		fmt.Println(e.Message)
//	})
//	agg.Publish(events.TopicModuleLoaded, events.EventData{Name: "Orders"})
//	agg.Unsubscribe(token)
//
// Message templates use text/template with the sprig function map, so a
// template may write {{.Region | quote}} or {{.Name | upper}}. Unknown
// reasons fall back to a generic message.
package events
