package metrics

import "testing"

func TestCognitiveComplexity(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want uint32
	}{
		{
			name: "no branches",
			src: `const Label = ({ text }) => {
  return <span>{text}</span>;
};`,
			want: 0,
		},
		{
			name: "single if",
			src: `const Gate = ({ open }) => {
  if (open) {
    return <div>open</div>;
  }
  return <div>closed</div>;
};`,
			want: 1,
		},
		{
			name: "doubly nested if compounds",
			src: `const Gadget = ({ a, b }) => {
  if (a) {
    if (b) {
      return <div />;
    }
  }
  return <span />;
};`,
			want: 3,
		},
		{
			name: "else if stays at the same level",
			src: `const Status = ({ code }) => {
  if (code === 1) {
    return <em>one</em>;
  } else if (code === 2) {
    return <em>two</em>;
  } else {
    return <em>other</em>;
  }
};`,
			want: 2,
		},
		{
			name: "logical operator sequence",
			src: `const Guard = ({ a, b, c }) => {
  const ok = a && b && c;
  return <span>{ok}</span>;
};`,
			want: 2,
		},
		{
			name: "nullish is flat even when nested",
			src: `const Fallback = ({ user }) => {
  if (user) {
    const name = user.name ?? 'anonymous';
    return <span>{name}</span>;
  }
  return null;
};`,
			want: 2,
		},
		{
			name: "switch charges per case but not default",
			src: `const Badge = ({ kind }) => {
  switch (kind) {
    case 'info':
      return <i />;
    case 'warn':
      return <b />;
    default:
      return <span />;
  }
};`,
			want: 3,
		},
		{
			name: "branch inside case body nests",
			src: `const Deep = ({ kind, loud }) => {
  switch (kind) {
    case 'warn':
      if (loud) {
        return <b>WARN</b>;
      }
      return <b>warn</b>;
    default:
      return <span />;
  }
};`,
			want: 4,
		},
		{
			name: "catch is a branch and nests its body",
			src: `const Risky = ({ load, retry }) => {
  try {
    load();
  } catch (err) {
    if (retry) {
      retry();
    }
  }
  return <div />;
};`,
			want: 3,
		},
		{
			name: "loop body nests",
			src: `const List = ({ items }) => {
  const out = [];
  for (const item of items) {
    if (item.visible) {
      out.push(item);
    }
  }
  return <ul>{out}</ul>;
};`,
			want: 3,
		},
		{
			name: "jsx conditional charges expression and operator",
			src: `const Toggle = ({ show }) => {
  return <div>{show && <span>on</span>}</div>;
};`,
			want: 2,
		},
		{
			name: "nested function resets nesting",
			src: `const Outer = ({ items }) => {
  if (items.length > 0) {
    return (
      <ul>
        {items.map((item) => {
          if (item.ok) {
            return <li>{item.id}</li>;
          }
          return null;
        })}
      </ul>
    );
  }
  return null;
};`,
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := componentNameOf(tt.src)
			node, src := boundNode(t, tt.src, name)
			if got := CognitiveComplexity(node, src); got != tt.want {
				t.Errorf("CognitiveComplexity = %d, want %d", got, tt.want)
			}
		})
	}
}

// Cyclomatic and cognitive agree on a doubly nested if: two decision
// points either way, but cognitive weights the inner one by depth.
func TestNestedIfMetricsAgreeOnTotal(t *testing.T) {
	src := `const Gadget = ({ a, b }) => {
  if (a) {
    if (b) {
      return <div />;
    }
  }
  return <span />;
};`
	node, source := boundNode(t, src, "Gadget")

	if cyc := CyclomaticComplexity(node, source); cyc != 3 {
		t.Errorf("CyclomaticComplexity = %d, want 3", cyc)
	}
	if cog := CognitiveComplexity(node, source); cog != 3 {
		t.Errorf("CognitiveComplexity = %d, want 3", cog)
	}
}
