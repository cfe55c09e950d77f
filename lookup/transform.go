package lookup

import (
	"iluminati/company"
	"iluminati/graph"
)

// toResult превращает разобранный ответ любого варианта в Result.
// v2 и legacy проходят через один и тот же нормализатор.
func (c *Client) toResult(resp *Response, path Path) *Result {
	res := &Result{
		Companies: []company.Company{},
		Facets:    map[string]any{},
		Path:      path,
	}
	if resp.Facets != nil {
		res.Facets = resp.Facets
	}

	switch resp.Kind {
	case KindGraph:
		for _, raw := range resp.RawNodes {
			if graph.String(raw["type"]) != string(graph.NodeCompany) || raw["ico"] == nil {
				continue
			}
			if co := c.normalizer.Normalize(companyFromNode(raw)); co != nil {
				res.Companies = append(res.Companies, *co)
			}
		}
		res.Graph = resp.Graph
		res.Total = len(res.Companies)

	case KindList, KindSingle:
		for _, raw := range resp.Records {
			if co := c.normalizer.Normalize(raw); co != nil {
				res.Companies = append(res.Companies, *co)
			}
		}
		res.Total = resp.Total
		if res.Total < len(res.Companies) {
			res.Total = len(res.Companies)
		}

	case KindEmpty:
		res.Total = 0
	}

	if res.Graph == nil && len(res.Companies) > 0 {
		res.Graph = graph.FromCompany(&res.Companies[0])
	}
	return res
}

// companyFromNode собирает сырую запись компании из узла готового графа
func companyFromNode(node map[string]any) map[string]any {
	raw := map[string]any{
		"ico":     node["ico"],
		"name":    node["label"],
		"address": node["details"],
		"status":  company.DefaultStatus,
		"country": node["country"],
	}
	if score, ok := node["risk_score"]; ok {
		raw["risk_score"] = score
	}
	if seat, ok := node["virtual_seat"]; ok {
		raw["virtual_seat"] = seat
	}
	if details, ok := node["details"].(map[string]any); ok {
		raw["address"] = details["address"]
	}
	return raw
}
